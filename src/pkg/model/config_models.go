package model

type Config struct {
	DatabaseType string `json:"database_type"`
	DatabaseDir  string `json:"database_dir"`
	DatabaseFile string `json:"database_file"`
	LogFolder    string `json:"log_folder"`
	MainLog      string `json:"main_log"`
	ErrorLog     string `json:"error_log"`
	ExportFolder string `json:"export_folder"`
	DebugLog     bool   `json:"debug_log"`
}
