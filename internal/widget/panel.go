package widget

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/suggest"
)

// UnknownWidgetError is returned by Apply for names that match no widget.
type UnknownWidgetError struct {
	Name       string
	Suggestion string
}

func (e *UnknownWidgetError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown widget %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown widget %q", e.Name)
}

// Panel is a flat set of widgets sharing one coordinate space. Widgets added
// later sit on top and see events first.
type Panel struct {
	title   string
	size    geom.Point
	widgets []Widget
	byName  map[string]Widget

	// captured receives motion and the release after it consumed a press,
	// so drags keep working when another widget lies under the pointer.
	captured Widget
	onChange ChangeFunc
}

// NewPanel returns a panel holding widgets. Names must be unique.
func NewPanel(title string, size geom.Point, widgets ...Widget) (*Panel, error) {
	p := &Panel{
		title:  title,
		size:   size,
		byName: make(map[string]Widget, len(widgets)),
	}
	for _, w := range widgets {
		if err := p.Add(w); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// FromConfig builds the panel and every widget described by c.
func FromConfig(c *config.Config) (*Panel, error) {
	p, err := NewPanel(c.Panel.Title, geom.Pt(c.Panel.Width, c.Panel.Height))
	if err != nil {
		return nil, err
	}
	for _, wc := range c.Widgets {
		w, err := Build(wc)
		if err != nil {
			return nil, err
		}
		if err := p.Add(w); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Add places w on top of the existing widgets.
func (p *Panel) Add(w Widget) error {
	if _, ok := p.byName[w.Name()]; ok {
		return fmt.Errorf("duplicate widget name %q", w.Name())
	}
	p.byName[w.Name()] = w
	p.widgets = append(p.widgets, w)
	w.SetOnChange(p.notify)
	return nil
}

func (p *Panel) Title() string { return p.title }

func (p *Panel) Size() geom.Point { return p.size }

// Widgets returns the widgets from bottom to top.
func (p *Panel) Widgets() []Widget {
	return append([]Widget(nil), p.widgets...)
}

func (p *Panel) Widget(name string) (Widget, bool) {
	w, ok := p.byName[name]
	return w, ok
}

// SetOnChange registers the listener notified of every widget value change.
func (p *Panel) SetOnChange(fn ChangeFunc) {
	p.onChange = fn
}

func (p *Panel) notify(name string, value float64) {
	if p.onChange != nil {
		p.onChange(name, value)
	}
}

// DispatchMouse delivers a press or release in panel coordinates. It
// reports whether a widget consumed it.
func (p *Panel) DispatchMouse(ev event.Mouse) bool {
	if !ev.Press && p.captured != nil {
		w := p.captured
		p.captured = nil
		local := ev.Offset(w.Bounds().Min)
		if w.Mouse(&local) {
			return true
		}
	}

	for i := len(p.widgets) - 1; i >= 0; i-- {
		w := p.widgets[i]
		local := ev.Offset(w.Bounds().Min)
		if w.Mouse(&local) {
			if ev.Press {
				p.captured = w
			}
			return true
		}
	}
	return false
}

// DispatchMotion delivers pointer movement in panel coordinates.
func (p *Panel) DispatchMotion(ev event.Motion) bool {
	if p.captured != nil {
		local := ev.Offset(p.captured.Bounds().Min)
		if p.captured.Motion(&local) {
			return true
		}
	}

	for i := len(p.widgets) - 1; i >= 0; i-- {
		w := p.widgets[i]
		if w == p.captured {
			continue
		}
		local := ev.Offset(w.Bounds().Min)
		if w.Motion(&local) {
			return true
		}
	}
	return false
}

// DispatchScroll delivers a wheel event in panel coordinates.
func (p *Panel) DispatchScroll(ev event.Scroll) bool {
	for i := len(p.widgets) - 1; i >= 0; i-- {
		w := p.widgets[i]
		local := ev.Offset(w.Bounds().Min)
		if w.Scroll(&local) {
			return true
		}
	}
	return false
}

// WidgetAt returns the topmost widget under pos, in panel coordinates.
func (p *Panel) WidgetAt(pos geom.Point) (Widget, bool) {
	for i := len(p.widgets) - 1; i >= 0; i-- {
		if p.widgets[i].Bounds().Contains(pos) {
			return p.widgets[i], true
		}
	}
	return nil, false
}

// Values returns every widget's value keyed by name.
func (p *Panel) Values() map[string]float64 {
	values := make(map[string]float64, len(p.widgets))
	for _, w := range p.widgets {
		values[w.Name()] = w.Value()
	}
	return values
}

// Apply sets the named widgets' values, notifying the change listener for
// each value that actually changes. Names that match no widget are skipped
// and reported together as UnknownWidgetErrors.
func (p *Panel) Apply(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		w, ok := p.byName[name]
		if !ok {
			e := &UnknownWidgetError{Name: name}
			e.Suggestion, _ = suggest.Closest(name, p.names())
			errs = append(errs, e)
			continue
		}
		w.SetValue(values[name], true)
	}
	return errors.Join(errs...)
}

// Dirty reports whether any widget asked for a repaint since the last call.
func (p *Panel) Dirty() bool {
	dirty := false
	for _, w := range p.widgets {
		if w.TakeDirty() {
			dirty = true
		}
	}
	return dirty
}

func (p *Panel) names() []string {
	names := make([]string, 0, len(p.widgets))
	for _, w := range p.widgets {
		names = append(names, w.Name())
	}
	return names
}
