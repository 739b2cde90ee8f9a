package config

type WorkerKeyStruct struct {
	ScoreRefreshQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ScoreRefreshQueue: "score_refresh_queue",
}
