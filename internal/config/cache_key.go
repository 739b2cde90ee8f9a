package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SchedulePayloadKey returns the cache key for a schedule's assignment payload.
func (r *CacheKeyStruct) SchedulePayloadKey(scheduleID string) string {
	return fmt.Sprintf("schedule:%s:payload", scheduleID)
}

// CurrentScheduleKey returns the cache key holding the current (highest)
// schedule version ID for a semester.
func (r *CacheKeyStruct) CurrentScheduleKey(semesterID int) string {
	return fmt.Sprintf("semester:%d:current_schedule", semesterID)
}

// ScheduleStreamChannel returns the Redis PubSub channel carrying live
// mutation events for a schedule's dashboard stream.
func (r *CacheKeyStruct) ScheduleStreamChannel(scheduleID string) string {
	return fmt.Sprintf("schedule:%s:stream", scheduleID)
}

var CacheKey = NewCacheKeyStruct()
