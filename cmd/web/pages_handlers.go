package main

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shreekara.in/catalog-web/internal/content"
	"shreekara.in/catalog-web/internal/enquiry"
	handlersPkg "shreekara.in/catalog-web/internal/handlers"
	mw "shreekara.in/catalog-web/internal/middleware"
	"shreekara.in/catalog-web/internal/observability"
)

// ContactView aggregates the contact page and its form fragment.
type ContactView struct {
	ProductID   string
	ProductName string
	Form        enquiry.Enquiry
	Errors      enquiry.FieldErrors
	Submitted   *enquiry.Enquiry
	Failed      bool
	CSRFToken   string
	Site        handlersPkg.Site
}

func contactDefaults(r *http.Request, productID string) ContactView {
	view := ContactView{ProductID: productID, CSRFToken: mw.CSRFToken(r), Site: site}
	view.Form.ProductID = productID
	if productID == "" {
		return view
	}
	if p, ok := findProduct(r.Context(), productID); ok {
		view.ProductName = p.Name
		view.Form.Message = "I would like a quote for " + p.Name + "."
	}
	return view
}

// ContactHandler renders the enquiry form, prefilled when ?product= names a product.
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	view := contactDefaults(r, strings.TrimSpace(r.URL.Query().Get("product")))
	vm := handlersPkg.PageData{Title: "Contact Us", Contact: view}
	vm.SEO.Description = "Request a quote or ask about our wound care and surgical products."
	if view.ProductName != "" {
		vm.Title = "Request a Quote"
	}
	renderPage(w, r, "contact", vm)
}

// ContactSubmitHandler validates and stores an enquiry.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	view := contactDefaults(r, strings.TrimSpace(r.PostFormValue("product_id")))
	view.Form = enquiry.Enquiry{
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Message:   r.PostFormValue("message"),
		ProductID: view.ProductID,
	}

	status := http.StatusOK
	saved, err := submitEnquiry(r, view.Form)
	var fields enquiry.FieldErrors
	switch {
	case err == nil:
		view.Submitted = &saved
		view.Form = enquiry.Enquiry{}
		mw.Notify(w, "Thank you! We will get back to you shortly.", "success")
	case errors.As(err, &fields):
		status = http.StatusUnprocessableEntity
		view.Form = saved
		view.Errors = fields
		mw.Notify(w, "Please correct the highlighted fields.", "error")
	default:
		observability.FromContext(r.Context()).Error("store enquiry", zap.Error(err))
		status = http.StatusInternalServerError
		view.Failed = true
		mw.Notify(w, "Sorry, your message could not be sent. Please call us instead.", "error")
	}

	if mw.IsHTMX(r.Context()) {
		// htmx leaves 4xx/5xx bodies unswapped unless told otherwise; site.js
		// allows the contact form target.
		renderTemplateStatus(w, r, status, "frag_contact_form", view)
		return
	}
	vm := handlersPkg.PageData{Title: "Contact Us", Contact: view}
	renderPageStatus(w, r, status, "contact", vm)
}

func submitEnquiry(r *http.Request, e enquiry.Enquiry) (enquiry.Enquiry, error) {
	if enquiries == nil {
		if err := enquiry.Validate(&e); err != nil {
			return e, err
		}
		return e, errors.New("enquiry store not configured")
	}
	return enquiries.Submit(r.Context(), e)
}

// ContentPageHandler renders a markdown page from the content directory.
func ContentPageHandler(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pageLibrary == nil {
			NotFoundHandler(w, r)
			return
		}
		page, err := pageLibrary.Page(slug)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				NotFoundHandler(w, r)
				return
			}
			observability.FromContext(r.Context()).Error("content page", zap.String("slug", slug), zap.Error(err))
			http.Error(w, "content unavailable", http.StatusInternalServerError)
			return
		}
		vm := handlersPkg.PageData{Title: page.Title, Content: page}
		vm.SEO.Description = page.Summary
		if page.SEO.Title != "" {
			vm.Title = page.SEO.Title
		}
		if page.SEO.Description != "" {
			vm.SEO.Description = page.SEO.Description
		}
		vm.SEO.OG.Image = page.SEO.OGImage
		renderPage(w, r, "page", vm)
	}
}

// NotFoundHandler renders the 404 page, or an error toast for htmx requests.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.WriteError(w, r, http.StatusNotFound, "Page not found.")
		return
	}
	vm := handlersPkg.PageData{Title: "Page not found"}
	vm.SEO.Robots = "noindex"
	renderPageStatus(w, r, http.StatusNotFound, "notfound", vm)
}
