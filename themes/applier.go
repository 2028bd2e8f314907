package themes

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/readmosaic/a11y-settings-api/settings"
)

// DocumentSurface is the document root a descriptor is applied to.
type DocumentSurface interface {
	AddMarker(Marker)
	RemoveMarker(Marker)
}

// Applier applies descriptors to a document surface as a set
// replacement: markers from the previous descriptor are removed before
// the new ones are added, so stale markers never accumulate.
type Applier struct {
	mu      sync.Mutex
	surface DocumentSurface
	applied []Marker
}

func NewApplier(surface DocumentSurface) *Applier {
	return &Applier{surface: surface}
}

func (a *Applier) Apply(d Descriptor) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, m := range a.applied {
		a.surface.RemoveMarker(m)
	}

	next := d.Markers()
	for _, m := range next {
		a.surface.AddMarker(m)
	}

	a.applied = next
}

// Handle lets an Applier subscribe to settings changes.
func (a *Applier) Handle(p settings.SettingsChangedPayload) {
	a.Apply(FromSettings(p.Settings))
}

// LogSurface traces marker changes to the application log. It stands in
// for a document root on the server side, where the actual class list
// lives in the client.
type LogSurface struct{}

func NewLogSurface() *LogSurface {
	return &LogSurface{}
}

func (l *LogSurface) AddMarker(m Marker) {
	log.WithFields(log.Fields{"marker": m}).Trace("Add style marker")
}

func (l *LogSurface) RemoveMarker(m Marker) {
	log.WithFields(log.Fields{"marker": m}).Trace("Remove style marker")
}
