package widget

import "github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"

// Collection is an ordered list of widgets. Insertion order is paint
// order; hit tests walk it in reverse so the topmost widget wins.
type Collection struct {
	widgets []Widget

	Logger interface {
		Errorf(component string, format string, args ...interface{})
	}
}

// NewCollection returns an empty collection.
func NewCollection() *Collection { return &Collection{} }

// Add appends a widget and returns it for fluent chaining.
func (c *Collection) Add(w Widget) Widget {
	c.widgets = append(c.widgets, w)
	return w
}

// Remove drops the first occurrence of w.
func (c *Collection) Remove(w Widget) {
	for i, have := range c.widgets {
		if have == w {
			c.widgets = append(c.widgets[:i], c.widgets[i+1:]...)
			return
		}
	}
}

// Clear removes all widgets.
func (c *Collection) Clear() { c.widgets = nil }

// Len returns the number of widgets.
func (c *Collection) Len() int { return len(c.widgets) }

// Widgets returns the backing slice in paint order. Callers must not
// mutate it.
func (c *Collection) Widgets() []Widget { return c.widgets }

// RenderAll draws every visible widget in insertion order. A failure
// in one widget is reported and the pass continues; one malfunctioning
// widget never blanks the rest of the frame.
func (c *Collection) RenderAll(cv *canvas.Canvas) {
	for _, w := range c.widgets {
		if !w.Visible() {
			continue
		}
		if err := c.renderOne(w, cv); err != nil && c.Logger != nil {
			c.Logger.Errorf("widget", "render failed: %v", renderError(w, err))
		}
	}
}

func (c *Collection) renderOne(w Widget, cv *canvas.Canvas) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = renderError(w, canvas.ErrDrawing)
		}
	}()
	return w.Render(cv)
}

// FindWidgetAt returns the topmost visible widget containing the tile
// (col,row), or nil.
func (c *Collection) FindWidgetAt(col, row int) Widget {
	for i := len(c.widgets) - 1; i >= 0; i-- {
		w := c.widgets[i]
		wc, wr, ww, wh := w.Bounds()
		if w.Visible() && col >= wc && col < wc+ww && row >= wr && row < wr+wh {
			return w
		}
	}
	return nil
}

// OfType filters a collection down to widgets of a concrete type, in
// paint order.
func OfType[T Widget](c *Collection) []T {
	var out []T
	for _, w := range c.widgets {
		if t, ok := w.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
