package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Southclaws/fault/ftag"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/freqnote/block"
	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/keysig"
	"github.com/jsphweid/freqnote/logging"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/tuning"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// largest request body accepted
const maxBodyBytes = 1 << 20

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", constants.GetPort(), "port to listen on")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the converter over HTTP",
	Long: `Serves JSON endpoints for conversion, tuning estimation and key
inference. Allowed CORS origins come from FREQNOTE_ALLOWED_ORIGINS.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf(":%d", servePort)
		logging.Info("listening", logging.Fields{"addr": addr})
		return http.ListenAndServe(addr, NewRouter())
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestID)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/tuning", HandleTuning).Methods("POST")
	router.HandleFunc("/key", HandleKey).Methods("POST")
	router.HandleFunc("/instruments", HandleInstruments).Methods("GET")
	router.HandleFunc("/health", HandleHealth).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: constants.GetAllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := logging.ContextWithFields(r.Context(), logging.Fields{"request_id": id, "path": r.URL.Path})
		logging.WithContext(ctx).Info("request", logging.Fields{"method": r.Method})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errs.Kind(err) {
	case ftag.InvalidArgument:
		status = http.StatusBadRequest
	case ftag.NotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		logging.WithContext(r.Context()).Error(err, "request failed")
	} else {
		logging.WithContext(r.Context()).Debug("request rejected", logging.Fields{"error": err.Error()})
	}
	writeJSON(w, status, model.ErrorResponse{Error: errs.Describe(err)})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err == nil {
		err = json.Unmarshal(reqBody, v)
	}
	if err != nil {
		writeError(w, r, errs.Op("decode", "request body", errors.Wrap(errs.ErrInvalidSettings, err.Error())))
		return false
	}
	return true
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	s := model.DefaultSettings()
	input := model.ConvertRequestBody{Settings: &s}
	if !decode(w, r, &input) {
		return
	}
	if input.Settings == nil {
		input.Settings = &s
	}

	res, err := block.Convert(r.Context(), input.Text, *input.Settings)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ConvertResponse(res, input.Settings.Unicode))
}

// ConvertResponse flattens a conversion result for the HTTP api.
func ConvertResponse(res *block.Result, unicode bool) model.ConvertResponse {
	out := model.ConvertResponse{
		Text:        res.Text,
		Reference:   res.Reference,
		Estimated:   res.Estimated,
		Degenerate:  res.Tuning != nil && res.Tuning.Degenerate,
		Issues:      make([]model.TokenIssue, 0, len(res.Issues)),
		Frequencies: res.Frequencies,
		Notes:       make([]string, 0, len(res.Notes)),
	}
	if out.Frequencies == nil {
		out.Frequencies = []float64{}
	}
	for _, i := range res.Issues {
		out.Issues = append(out.Issues, model.TokenIssue{Line: i.Line, Token: i.Token, Raw: i.Raw, Detail: i.Err.Error()})
	}
	for _, n := range res.Notes {
		out.Notes = append(out.Notes, n.Format(unicode))
	}
	if res.Key != nil {
		kr := KeyResponse(*res.Key, unicode)
		out.Key = &kr
	}
	return out
}

func HandleTuning(w http.ResponseWriter, r *http.Request) {
	var input model.TuningRequestBody
	if !decode(w, r, &input) {
		return
	}
	res, err := Tune(input.Frequencies, tuning.Params{Center: input.Center})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.TuningResponse{
		Reference:    res.Reference,
		TotalError:   res.TotalError,
		MeanAbsCents: res.MeanAbsCents,
		StdDevCents:  res.StdDevCents,
		Degenerate:   res.Degenerate,
	})
}

func HandleKey(w http.ResponseWriter, r *http.Request) {
	var input model.KeyRequestBody
	if !decode(w, r, &input) {
		return
	}
	res, err := keysig.FromNames(input.Notes)
	if err != nil {
		writeError(w, r, errs.Op("infer_key", strings.Join(input.Notes, " "), err))
		return
	}
	writeJSON(w, http.StatusOK, KeyResponse(res, false))
}

func HandleInstruments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Instruments())
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
