package session

import (
	"net/http"
)

const (
	// Default Flash Class
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"

	// Default Flash Msg
	BadInputMsg   = "Hmm... check your form, something isn't correct."
	DefaultErrMsg = "Uh oh! We've run into an issue."
)

var ContactUsErr = DefaultErrMsg + " Please contact us at %s if the issue persists."

type FlashSessionable interface {
	ClearFlashes(w http.ResponseWriter, r *http.Request)
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
	SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error
}

type Flash struct {
	Class string `json:"class"`
	Msg   string `json:"msg"`
}
