package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joedomabylv/QuickSched/internal/config"
	"github.com/joedomabylv/QuickSched/internal/database"
	"github.com/joedomabylv/QuickSched/internal/logger"
	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/repository"
)

// Seeds a demo data set: the current semester, a handful of labs, and a
// roster of TAs with experience and availability already filled in.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	semesterRepo := repository.NewSemesterRepository(pool)
	labRepo := repository.NewLabRepository(pool)
	taRepo := repository.NewTARepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)

	// ─── Semester ──────────────────────────────────────────────────────
	term, year := model.CurrentTerm(time.Now())
	semester := &model.Semester{Time: term, Year: year}
	if err := semesterRepo.Create(ctx, pool, semester); err != nil {
		// Already seeded? Reuse the existing row.
		existing, lookupErr := semesterRepo.GetByTerm(ctx, term, year)
		if lookupErr != nil {
			log.Fatal().Err(err).Msg("Failed to create semester")
		}
		semester = existing
	} else {
		// Fresh semesters carry an empty version-0 template schedule.
		if err := scheduleRepo.Create(ctx, &model.TemplateSchedule{SemesterID: semester.ID}); err != nil {
			log.Fatal().Err(err).Msg("Failed to create initial schedule")
		}
	}
	fmt.Printf("Semester %s (id %d)\n", semester.Label(), semester.ID)

	// ─── Labs ──────────────────────────────────────────────────────────
	mustDays := func(days ...string) model.DaySet {
		set, err := model.DaySetFromStrings(days)
		if err != nil {
			log.Fatal().Err(err).Msg("Bad seed weekday")
		}
		return set
	}
	mustTime := func(s string) model.MinuteOfDay {
		m, err := model.ParseMinuteOfDay(s)
		if err != nil {
			log.Fatal().Err(err).Msg("Bad seed time")
		}
		return m
	}

	labs := []model.Lab{
		{CourseID: "10001", ClassName: "Intro Programming Lab", Subject: "CSE", CatalogID: "1284", Section: "001",
			Days: mustDays("MON", "WED"), StartTime: mustTime("09:00"), EndTime: mustTime("10:50"),
			FacilityID: "DI-250", FacilityBuilding: "Dreese Labs", Instructor: "R. Patel"},
		{CourseID: "10002", ClassName: "Intro Programming Lab", Subject: "CSE", CatalogID: "1284", Section: "002",
			Days: mustDays("TUE", "THU"), StartTime: mustTime("13:00"), EndTime: mustTime("14:50"),
			FacilityID: "DI-250", FacilityBuilding: "Dreese Labs", Instructor: "R. Patel"},
		{CourseID: "10003", ClassName: "Data Structures Lab", Subject: "CSE", CatalogID: "2231", Section: "001",
			Days: mustDays("FRI"), StartTime: mustTime("11:00"), EndTime: mustTime("12:50"),
			FacilityID: "BO-310", FacilityBuilding: "Bolz Hall", Instructor: "M. Chen"},
		{CourseID: "10004", ClassName: "Systems Lab", Subject: "CSE", CatalogID: "2421", Section: "001",
			Days: mustDays("MON", "WED"), StartTime: mustTime("15:00"), EndTime: mustTime("16:50"),
			FacilityID: "CL-112", FacilityBuilding: "Caldwell Lab", Instructor: "S. Okafor"},
	}
	for i := range labs {
		labs[i].SemesterID = semester.ID
		if err := labRepo.Create(ctx, &labs[i]); err != nil {
			log.Warn().Err(err).Str("course_id", labs[i].CourseID).Msg("Skipping lab")
			continue
		}
		fmt.Printf("Lab %s %s-%s (id %d)\n", labs[i].CourseID, labs[i].CatalogID, labs[i].Section, labs[i].ID)
	}

	// ─── TAs ───────────────────────────────────────────────────────────
	type seedTA struct {
		ta          model.TA
		experience  []model.Experience
		unavailable []model.UnavailableSlot
	}
	seeds := []seedTA{
		{
			ta:         model.TA{FirstName: "Jane", LastName: "Doe", StudentID: "doe.1", Year: model.YearGraduate, Contracted: true},
			experience: []model.Experience{{Subject: "CSE", CatalogID: "1284"}, {Subject: "CSE", CatalogID: "2231"}},
		},
		{
			ta:         model.TA{FirstName: "Omar", LastName: "Haddad", StudentID: "haddad.3", Year: model.YearSenior, Contracted: true},
			experience: []model.Experience{{Subject: "CSE", CatalogID: "2421"}},
			unavailable: []model.UnavailableSlot{
				{Days: mustDays("MON", "WED"), StartTime: mustTime("09:00"), EndTime: mustTime("11:00")},
			},
		},
		{
			ta:         model.TA{FirstName: "Priya", LastName: "Sharma", StudentID: "sharma.12", Year: model.YearJunior},
			experience: []model.Experience{{Subject: "CSE", CatalogID: "1284"}},
		},
		{
			ta: model.TA{FirstName: "Leo", LastName: "Martins", StudentID: "martins.7", Year: model.YearSophomore},
			unavailable: []model.UnavailableSlot{
				{Days: mustDays("FRI"), StartTime: mustTime("10:00"), EndTime: mustTime("13:00")},
			},
		},
	}

	for _, s := range seeds {
		ta := s.ta
		if err := taRepo.Create(ctx, &ta); err != nil {
			log.Warn().Err(err).Str("student_id", ta.StudentID).Msg("Skipping TA")
			continue
		}
		if err := taRepo.ReplaceExperience(ctx, ta.ID, s.experience); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed experience")
		}
		if err := taRepo.ReplaceUnavailability(ctx, ta.ID, s.unavailable); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed unavailability")
		}
		if err := taRepo.ReplaceEligibility(ctx, ta.ID, []int{semester.ID}); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed eligibility")
		}
		ta.Holds = model.Holds{}
		if err := taRepo.Update(ctx, &ta); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear holds")
		}
		fmt.Printf("TA %s (id %d)\n", ta.DisplayName(), ta.ID)
	}

	fmt.Println("Demo data seeded.")
}
