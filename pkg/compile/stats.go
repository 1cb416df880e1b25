package compile

// Stats counts what happened during a run.
type Stats struct {
	FilesAccepted   int `json:"files_accepted" yaml:"files_accepted"`
	FilesRejected   int `json:"files_rejected" yaml:"files_rejected"`
	Resets          int `json:"resets" yaml:"resets"`
	SheetsCompiled  int `json:"sheets_compiled" yaml:"sheets_compiled"`
	SheetsDuplicate int `json:"sheets_duplicate" yaml:"sheets_duplicate"`
	SheetsSkipped   int `json:"sheets_skipped" yaml:"sheets_skipped"`
	PlayersRecorded int `json:"players_recorded" yaml:"players_recorded"`
	PlayersSkipped  int `json:"players_skipped" yaml:"players_skipped"`
	ExtraScores     int `json:"extra_scores" yaml:"extra_scores"`
	StationsRenamed int `json:"stations_renamed" yaml:"stations_renamed"`
	RatingsRounded  int `json:"ratings_rounded" yaml:"ratings_rounded"`
	RatingsInvalid  int `json:"ratings_invalid" yaml:"ratings_invalid"`
}
