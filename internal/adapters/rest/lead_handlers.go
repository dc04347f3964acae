package rest

import (
	"errors"
	"net/http"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
	"versus-web/internal/core/port/usecases_port"
)

const (
	contactPath = "/contacto"
	sellPath    = "/vender"

	// sentParam - флаг успешной отправки в адресе после редиректа
	sentParam = "enviado"
)

type LeadHandler struct {
	submitLeadUC usecases_port.SubmitLeadUseCase
	renderer     *Renderer
}

func NewLeadHandler(submitLeadUC usecases_port.SubmitLeadUseCase, renderer *Renderer) *LeadHandler {
	return &LeadHandler{submitLeadUC: submitLeadUC, renderer: renderer}
}

type leadPage struct {
	template string
	path     string
	kind     domain.LeadKind
	meta     PageMeta
}

var (
	contactPage = leadPage{
		template: "contact",
		path:     contactPath,
		kind:     domain.LeadContact,
		meta: PageMeta{
			Title:       "Contacto",
			Description: "Escríbenos y te responderemos lo antes posible.",
		},
	}
	sellPage = leadPage{
		template: "sell",
		path:     sellPath,
		kind:     domain.LeadValuation,
		meta: PageMeta{
			Title:       "Vende tu propiedad",
			Description: "Solicita una valoración gratuita de tu vivienda.",
		},
	}
)

// ContactForm обрабатывает GET /contacto
func (h *LeadHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r, contactPage)
}

// SubmitContact обрабатывает POST /contacto
func (h *LeadHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, contactPage)
}

// SellForm обрабатывает GET /vender
func (h *LeadHandler) SellForm(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r, sellPage)
}

// SubmitSell обрабатывает POST /vender
func (h *LeadHandler) SubmitSell(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, sellPage)
}

func (h *LeadHandler) showForm(w http.ResponseWriter, r *http.Request, page leadPage) {
	view := leadFormView{
		Action: page.path,
		Input:  domain.LeadInput{Kind: page.kind},
		Sent:   r.URL.Query().Get(sentParam) == "1",
	}
	h.renderer.Render(w, r, http.StatusOK, page.template, page.meta, view)
}

func (h *LeadHandler) submit(w http.ResponseWriter, r *http.Request, page leadPage) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "SubmitLead",
		"kind":    page.kind,
	})

	if err := r.ParseForm(); err != nil {
		handlerLogger.Warn("Invalid lead form", port.Fields{"error": err.Error()})
		h.renderer.Render(w, r, http.StatusBadRequest, page.template, page.meta, leadFormView{
			Action: page.path,
			Input:  domain.LeadInput{Kind: page.kind},
			Failed: true,
		})
		return
	}

	input := domain.LeadInput{
		Kind:            page.kind,
		Name:            formValue(r, "name"),
		Email:           formValue(r, "email"),
		Phone:           formValue(r, "phone"),
		Message:         formValue(r, "message"),
		PropertySlug:    formValue(r, "property_slug"),
		PropertyAddress: formValue(r, "property_address"),
		PropertyType:    formValue(r, "property_type"),
		PrivacyAccepted: formChecked(r, "privacy_accepted"),
	}

	lead, err := h.submitLeadUC.Execute(r.Context(), input)
	if err != nil {
		view := leadFormView{Action: page.path, Input: input}

		var validationErr *domain.LeadValidationError
		if errors.As(err, &validationErr) {
			view.Errors = validationErr.Fields
			h.renderer.Render(w, r, http.StatusUnprocessableEntity, page.template, page.meta, view)
			return
		}

		handlerLogger.Error("Use case failed", err, nil)
		view.Failed = true
		h.renderer.Render(w, r, http.StatusInternalServerError, page.template, page.meta, view)
		return
	}

	handlerLogger.Info("Lead accepted", port.Fields{"lead_id": lead.ID})
	http.Redirect(w, r, page.path+"?"+sentParam+"=1", http.StatusSeeOther)
}
