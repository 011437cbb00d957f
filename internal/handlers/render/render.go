package render

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type Struct any

// All error responses share one shape: a list of messages.
// Validation failures enumerate every violated field at once.
type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

func JSON(w http.ResponseWriter, data any) {
	jsonWithStatus(w, data, http.StatusOK)
}

// Render error messages with the given status code
func Errors(w http.ResponseWriter, code int, messages ...string) {
	jsonWithStatus(w, ErrorsResponse{Errors: messages}, code)
}

// InternalError renders the generic 500 body
// Details are for logs only, never for the response
func InternalError(w http.ResponseWriter) {
	Errors(w, http.StatusInternalServerError, "Internal Server Error")
}

// BindAndValidate decodes JSON request body into type T and validates it using struct tags.
// Returns the decoded value and writes appropriate error responses for decoding or validation failures.
func BindAndValidate[T Struct](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	err := json.NewDecoder(r.Body).Decode(&value)
	if err != nil {
		Errors(w, http.StatusBadRequest, "Invalid JSON body")
		return value, err
	}

	err = validate.Struct(value)
	if err != nil {
		// pretty sure cast will be ok cause expecting T is valid struct
		errs := err.(validator.ValidationErrors)
		Errors(w, http.StatusBadRequest, validationMessages(errs)...)
		return value, err
	}

	return value, nil
}

// jsonWithStatus sends data as json and enforces status code
func jsonWithStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	if err := enc.Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}
