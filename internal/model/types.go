// Package model defines shared data structures.
package model

// Options holds the resolved settings of a single CLI run.
type Options struct {
	DictName   string
	UploadPath string
	SearchKey  string
	ShowWords  bool
	Verbose    bool
	InitOnly   bool
	Backend    string
	DataDir    string
	LogLevel   string
}

// DictSummary describes a stored dictionary.
type DictSummary struct {
	Name  string
	Words int
}
