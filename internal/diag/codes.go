package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for a diagnostic kind.
type Code uint16

const (
	UnknownCode Code = 0

	// Scoreboard / semantic resolution (3000-3999)
	ScoreInfo               Code = 3000
	ScoreDuplicateDef       Code = 3001
	ScoreUnknownLibrary     Code = 3002
	ScoreDuplicateLibClause Code = 3003
	ScoreUnresolvedName     Code = 3004
	ScoreInvalidAll         Code = 3005
	ScoreInvalidNameSuffix  Code = 3006
	ScoreNotYetSupported    Code = 3007
	ScoreCircularDependency Code = 3008
	ScoreUnresolvedEntity   Code = 3009

	// I/O (4000-4999)
	IOLoadFileError Code = 4000

	// Project manifest (5000-5999)
	ProjInfo             Code = 5000
	ProjDuplicateLibrary Code = 5001
	ProjMissingFile      Code = 5002
	ProjBadLibraryName   Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	ScoreInfo:               "Scoreboard information",
	ScoreDuplicateDef:       "Name declared multiple times",
	ScoreUnknownLibrary:     "Unknown library",
	ScoreDuplicateLibClause: "Library already declared",
	ScoreUnresolvedName:     "Unresolved name",
	ScoreInvalidAll:         "Invalid 'all' selection",
	ScoreInvalidNameSuffix:  "Invalid name suffix",
	ScoreNotYetSupported:    "Construct not yet supported",
	ScoreCircularDependency: "Circular dependency",
	ScoreUnresolvedEntity:   "Unresolved entity",
	IOLoadFileError:         "I/O load file error",
	ProjInfo:                "Project information",
	ProjDuplicateLibrary:    "Duplicate library definition",
	ProjMissingFile:         "Missing source file",
	ProjBadLibraryName:      "Invalid library name",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
