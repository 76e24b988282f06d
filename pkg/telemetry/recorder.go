package telemetry

import "time"

// Recorder turns render and reload outcomes into metrics and hub events.
// Either side may be nil.
type Recorder struct {
	metrics *Metrics
	hub     *Hub
	source  string
}

// NewRecorder builds a Recorder reporting as source.
func NewRecorder(metrics *Metrics, hub *Hub, source string) *Recorder {
	return &Recorder{metrics: metrics, hub: hub, source: source}
}

// ObserveRender implements table.Observer.
func (r *Recorder) ObserveRender(d time.Duration, err error) {
	if r.metrics != nil {
		r.metrics.ObserveRender(d, err)
	}
	event := Event{
		Type: EventRenderCompleted,
		Data: map[string]any{"duration_ms": float64(d.Microseconds()) / 1000},
	}
	if err != nil {
		event.Type = EventRenderFailed
		event.Data["error"] = err.Error()
	}
	r.publish(event)
}

// ObserveReload reports a document (re)load of path with rows x cols cells.
func (r *Recorder) ObserveReload(path string, rows, cols int, err error) {
	if r.metrics != nil {
		r.metrics.ObserveReload(err)
		if err == nil {
			r.metrics.SetTableSize(rows, cols)
		}
	}
	event := Event{
		Type: EventDocumentLoaded,
		Data: map[string]any{"path": path, "rows": rows, "columns": cols},
	}
	if err != nil {
		event.Type = EventDocumentReloadFailed
		event.Data = map[string]any{"path": path, "error": err.Error()}
	}
	r.publish(event)
}

func (r *Recorder) publish(event Event) {
	if r.hub == nil {
		return
	}
	event.Source = r.source
	r.hub.Publish(event)
}
