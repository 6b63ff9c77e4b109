package constants

import (
	"os"
	"strconv"
	"strings"
)

func GetPort() int {
	port := os.Getenv("FREQNOTE_PORT")
	if port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8080
}

func GetAllowedOrigins() []string {
	origins := os.Getenv("FREQNOTE_ALLOWED_ORIGINS")
	if origins == "" {
		return []string{"*"}
	}
	var res []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

func GetLogLevel() string {
	level := os.Getenv("FREQNOTE_LOG_LEVEL")
	if level != "" {
		return strings.ToLower(level)
	}
	return "info"
}

// reference note is A4
const DefaultReferenceHz = 440.0

const (
	MinOctave     = -1
	MaxOctave     = 9
	DefaultOctave = 4
)

const CommentMarker = '%'

// any run of these separates tokens on a data line
const Delimiters = " ,\t/|"

// the estimator never looks further than this from its center, since
// candidates a whole semitone apart fit equally well
const SearchHalfRangeCents = 50.0

const DefaultPrecision = 4
