package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/cairn"
	"github.com/xy-planning-network/cairn/http/middleware"
	. "github.com/xy-planning-network/cairn/http/resp"
	"github.com/xy-planning-network/cairn/http/session"
	"github.com/xy-planning-network/cairn/logger"
)

// Handler shares the initialized Responder across all example responses.
type Handler struct {
	*Responder
}

// root is a fully-formed use of Responder, emitting a success envelope
// topped up with extra fields.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	e := Success("Welcome to the trailhead.").
		WithField("sick", "such data").
		WithField("wow", "so data")
	if err := h.Json(w, r, Data(e)); err != nil {
		h.Err(w, r, err)
	}
}

// signup shows a failure envelope carrying field-indexed error messages
// and the submitted form values so a client can rehydrate its form.
//
// to test this out, POST a form missing an email: curl -d 'name=dlk' localhost:8081/signup
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Err(w, r, err)
		return
	}

	errs := NewBag()
	if r.PostForm.Get("email") == "" {
		errs.Add("email", "Email is required.")
	}
	if r.PostForm.Get("name") == "" {
		errs.Add("name", "Name is required.")
	}

	if errs.Len() > 0 {
		e := Fail("Please fix the highlighted fields.").
			WithErrors(errs).
			WithInput(RequestInput(r))
		if err := h.Json(w, r, Code(http.StatusUnprocessableEntity), Data(e)); err != nil {
			h.Err(w, r, err)
		}
		return
	}

	e := Success("Signed up!").WithField("name", r.PostForm.Get("name"))
	if err := h.Json(w, r, Code(http.StatusCreated), Data(e)); err != nil {
		h.Err(w, r, err)
	}
}

// away redirects with a flash and query params stashed in the session.
func (h *Handler) away(w http.ResponseWriter, r *http.Request) {
	err := h.Redirect(w, r,
		Url("/"),
		Param("from", "away"),
		Flash(session.Flash{Class: "success", Msg: "You made it back."}),
	)
	if err != nil {
		h.Err(w, r, err)
	}
}

// fromCtx pulls the Responder out of the request context,
// the way handlers sitting behind middleware.InjectResponder do.
func fromCtx(w http.ResponseWriter, r *http.Request) {
	d, err := FromContext(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	d.Json(w, r, Data(Success("Plucked from context.")))
}

func main() {
	l := logger.New()

	// allocate our responder
	//
	// requestId lands in every JSON payload thanks to WithCtxKeys
	// pairing with the RequestID middleware below.
	d := NewResponder(
		WithLogger(l),
		WithRootUrl("http://localhost:8081"),
		WithCtxKeys(cairn.RequestIDKey),
	)

	// setup routing and middleware
	h := &Handler{d}
	r := mux.NewRouter()
	r.HandleFunc("/", h.root).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.signup).Methods(http.MethodPost)
	r.HandleFunc("/away", h.away).Methods(http.MethodGet)
	r.HandleFunc("/from-ctx", fromCtx).Methods(http.MethodGet)

	chain := middleware.Chain(
		r,
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.InjectSession(session.NewStubService()),
		middleware.InjectResponder(d),
	)

	// run the server
	http.ListenAndServe("localhost:8081", chain)
}
