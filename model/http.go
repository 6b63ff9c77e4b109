package model

type ConvertRequestBody struct {
	Text     string    `json:"text"`
	Settings *Settings `json:"settings"`
}

type TokenIssue struct {
	Line   int    `json:"line"`
	Token  int    `json:"token"`
	Raw    string `json:"raw"`
	Detail string `json:"detail"`
}

type ConvertResponse struct {
	Text        string       `json:"text"`
	Reference   float64      `json:"reference"`
	Estimated   bool         `json:"estimated"`
	Degenerate  bool         `json:"degenerate"`
	Key         *KeyResponse `json:"key,omitempty"`
	Issues      []TokenIssue `json:"issues"`
	Frequencies []float64    `json:"frequencies"`
	Notes       []string     `json:"notes"`
}

type TuningRequestBody struct {
	Frequencies []float64 `json:"frequencies"`
	Center      float64   `json:"center"`
}

type TuningResponse struct {
	Reference    float64 `json:"reference"`
	TotalError   float64 `json:"total_error"`
	MeanAbsCents float64 `json:"mean_abs_cents"`
	StdDevCents  float64 `json:"std_dev_cents"`
	Degenerate   bool    `json:"degenerate"`
}

type KeyRequestBody struct {
	Notes []string `json:"notes"`
}

type KeyResponse struct {
	Key         KeySignature   `json:"key"`
	Name        string         `json:"name"`
	Accidentals []string       `json:"accidentals"`
	Matches     []KeySignature `json:"matches"`
}

type InstrumentResponse struct {
	Name      string `json:"name"`
	Semitones int    `json:"semitones"`
	Octaves   int    `json:"octaves"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
