package ui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"timeline/internal/logic"
	"timeline/internal/source"
	"timeline/internal/ui/services/announce"
	"timeline/internal/ui/services/modal"
	"timeline/internal/ui/state"
	"timeline/internal/ui/surface"
	vm "timeline/internal/ui/viewmodels"
)

// detailPresenter mounts the event detail dialog in the modal root of the
// document. Replacing the subject updates the existing dialog in place, so
// the dialog root and its controls keep their identity.
type detailPresenter struct {
	doc       *surface.Document
	state     *state.AppState
	store     logic.EventStore
	announcer *announce.Service
	baseDir   string // resolves relative image paths
	logger    *slog.Logger
}

func (p *detailPresenter) Present(subject modal.Subject) (root, dismiss surface.ElementID) {
	if !p.doc.Exists(vm.ModalID) {
		p.mount()
	}

	heading, image := subject.Title, ""
	e := p.store.GetEvent(subject.ID)
	if e != nil {
		heading, image = e.Heading(), e.ImageURL
	}
	if el, ok := p.doc.Element(vm.ModalID); ok {
		el.Label = heading
	}
	if el, ok := p.doc.Element(vm.ModalTitleID); ok {
		el.Label = heading
	}
	if el, ok := p.doc.Element(vm.ModalImageID); ok {
		el.Label = image
	}

	p.state.ModalEventID = subject.ID
	p.state.ImageFailed = e != nil && !p.imageAvailable(image)
	if p.state.ImageFailed {
		p.logger.Debug("event image unavailable", "event", subject.ID, "image", image)
		p.announcer.Announce(fmt.Sprintf("Image for %s could not be loaded", e.Title), surface.Polite, 0)
	}
	return vm.ModalID, vm.ModalCloseID
}

func (p *detailPresenter) Dismiss() {
	p.doc.Remove(vm.ModalID)
	p.state.ModalEventID = ""
	p.state.ImageFailed = false
}

func (p *detailPresenter) mount() {
	elements := []struct {
		parent surface.ElementID
		el     surface.Element
	}{
		{surface.ModalRootID, surface.Element{ID: vm.ModalID, Role: surface.RoleDialog}},
		{vm.ModalID, surface.Element{ID: vm.ModalTitleID, Role: surface.RoleText}},
		{vm.ModalID, surface.Element{ID: vm.ModalImageID, Role: surface.RoleImage}},
	}
	for _, c := range vm.ModalControls {
		elements = append(elements, struct {
			parent surface.ElementID
			el     surface.Element
		}{vm.ModalID, surface.Element{ID: c.ID, Role: surface.RoleButton, Label: c.Label, Focusable: true, TabStop: true}})
	}
	for _, e := range elements {
		if err := p.doc.Append(e.parent, e.el); err != nil {
			p.logger.Error("mount detail dialog", "err", err)
		}
	}
}

// imageAvailable reports whether ref points at something displayable.
// Remote references are assumed reachable; local ones must exist.
func (p *detailPresenter) imageAvailable(ref string) bool {
	if ref == "" {
		return false
	}
	if source.IsRemote(ref) {
		return true
	}
	path := ref
	if !filepath.IsAbs(path) && p.baseDir != "" {
		path = filepath.Join(p.baseDir, path)
	}
	_, err := os.Stat(path)
	return err == nil
}

var _ modal.Presenter = (*detailPresenter)(nil)
