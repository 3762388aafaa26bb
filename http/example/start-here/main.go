/*
start-here provides a toy example use of cairn's http stack,
focusing on the basics of:

(1) constructing a default Outfitter;
(2) binding routes to handlers;
(3) using resp.Responder methods for responding to requests;
(4) and the use of resp.Fn functional options for declaring how
	the method forms the response payload.
*/
package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	. "github.com/xy-planning-network/cairn/http/resp"
	"github.com/xy-planning-network/cairn/outfitter"
)

// OutfitterHandler wraps a configured *Outfitter.
// The methods attached to it are the handlers the router
// will direct requests to.
type OutfitterHandler struct {
	*outfitter.Outfitter
}

// root is a fully-formed use of Responder,
// emitting a success envelope topped up with extra fields.
func (h *OutfitterHandler) root(w http.ResponseWriter, r *http.Request) {
	e := Success("Made it to the cairn.").
		WithField("sick", "such data").
		WithField("wow", "so data")
	if err := h.Json(w, r, Data(e)); err != nil {
		h.Err(w, r, err)
	}
}

// check shows a failure envelope carrying error messages
// and the submitted input so a client can rehydrate its form.
func (h *OutfitterHandler) check(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("marker") != "" {
		if err := h.Json(w, r, Data(Success("Marker spotted."))); err != nil {
			h.Err(w, r, err)
		}

		return
	}

	e := Fail("No marker in sight.").
		WithErrors(Messages{"marker is required"}).
		WithInput(RequestInput(r))
	if err := h.Json(w, r, Code(http.StatusUnprocessableEntity), Data(e)); err != nil {
		h.Err(w, r, err)
	}
}

// away redirects back to root with a query param tacked on.
func (h *OutfitterHandler) away(w http.ResponseWriter, r *http.Request) {
	if err := h.Redirect(w, r, Url("/"), Param("from", "away")); err != nil {
		h.Err(w, r, err)
	}
}

// broken logs the error and responds with 500.
func (h *OutfitterHandler) broken(w http.ResponseWriter, r *http.Request) {
	h.Err(w, r, fmt.Errorf("this handler cannot do much"))
}

func main() {
	// construct an Outfitter using all defaults,
	// mounting the router every handler is bound to below.
	r := mux.NewRouter()
	o, err := outfitter.New(outfitter.WithHandler(r))
	if err != nil {
		fmt.Println(err)
		return
	}

	// wrap the constructed Outfitter so it is exposed to all HTTP handlers.
	h := OutfitterHandler{o}

	// bind routes and handlers to one another.
	// every request passes through the default middleware stack first.
	r.HandleFunc("/broken", h.broken).Methods(http.MethodGet)
	r.HandleFunc("/check", h.check).Methods(http.MethodGet)
	r.HandleFunc("/away", h.away).Methods(http.MethodGet)
	r.HandleFunc("/", h.root).Methods(http.MethodGet)

	// start the web server until receiving a signal to stop.
	if err := o.Guide(); err != nil {
		fmt.Println(err)
		return
	}
}
