package config

import "runtime"

const (
	defaultCacheDB          = "~/.cache/courseaudit/index.db"
	defaultLogDir           = "~/.local/share/courseaudit/logs"
	defaultSheetDir         = "./excel"
	defaultOutput           = "./availability_report.xlsx"
	defaultCacheMaxAgeHours = 24.0
	defaultFuzzyThreshold   = 75
	defaultRequestTimeout   = 15
	defaultCourseColumn     = "Course"
	defaultSemesterColumn   = "Sem"
	defaultTermColumn       = "Term"
	defaultStatusColumn     = "Status"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDB:  defaultCacheDB,
			LogDir:   defaultLogDir,
			SheetDir: defaultSheetDir,
			Output:   defaultOutput,
		},
		Scanning: Scanning{
			Workers:          runtime.NumCPU(),
			CacheMaxAgeHours: defaultCacheMaxAgeHours,
			FuzzyThreshold:   defaultFuzzyThreshold,
		},
		Drive: Drive{
			RequestTimeout: defaultRequestTimeout,
		},
		Columns: Columns{
			Course:   defaultCourseColumn,
			Semester: defaultSemesterColumn,
			Term:     defaultTermColumn,
			Status:   defaultStatusColumn,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
