package app

import (
	"sync"

	"github.com/5hraddha/around/internal/around/schedule"
	"github.com/5hraddha/around/internal/around/session"
	"github.com/5hraddha/around/internal/platform/timeouts"
)

// CompactWidth is the widest viewport that collapses the header into a menu.
const CompactWidth = 550

// HeaderView is what the page header shows.
type HeaderView struct {
	LoggedIn bool
	Email    string
	// Compact is set for narrow viewports, where the email and logout
	// action sit behind a menu toggle.
	Compact  bool
	MenuOpen bool
	// LinkText labels the logout action when logged in, otherwise the link
	// to LinkRoute.
	LinkText  string
	LinkRoute session.Route
}

// Header tracks the debounced viewport width and the menu toggle.
type Header struct {
	mu       sync.Mutex
	width    int
	menuOpen bool
	debounce *schedule.Debouncer
}

// NewHeader starts with width and a closed menu.
func NewHeader(sched schedule.Scheduler, width int) *Header {
	return &Header{
		width:    width,
		debounce: schedule.NewDebouncer(sched, timeouts.ViewportDebounce),
	}
}

// Resize records a viewport width once resizing has been quiet for the
// debounce period.
func (h *Header) Resize(width int) {
	h.debounce.Trigger(func() {
		h.mu.Lock()
		h.width = width
		h.mu.Unlock()
	})
}

// Width returns the last settled viewport width.
func (h *Header) Width() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width
}

// ToggleMenu opens or closes the compact menu.
func (h *Header) ToggleMenu() {
	h.mu.Lock()
	h.menuOpen = !h.menuOpen
	h.mu.Unlock()
}

// View renders the header for the session state and current route.
func (h *Header) View(loggedIn bool, email string, route session.Route) HeaderView {
	h.mu.Lock()
	width, menuOpen := h.width, h.menuOpen
	h.mu.Unlock()

	if !loggedIn {
		view := HeaderView{LinkText: "Sign up", LinkRoute: session.RouteRegister}
		if route == session.RouteRegister {
			view.LinkText, view.LinkRoute = "Log in", session.RouteLogin
		}
		return view
	}
	compact := width <= CompactWidth
	return HeaderView{
		LoggedIn: true,
		Email:    email,
		Compact:  compact,
		MenuOpen: compact && menuOpen,
		LinkText: "Log out",
	}
}

// Stop drops any pending width update.
func (h *Header) Stop() {
	h.debounce.Stop()
}
