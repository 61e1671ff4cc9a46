package registry

// Row is one line of the task listing.
type Row struct {
	Name    string
	Summary string
	Ignored bool
	Default bool
}

// List produces listing rows for every non-private task, ordered by name.
// Private tasks are omitted but remain directly invocable.
func (r *Registry) List() []Row {
	rows := make([]Row, 0, len(r.names))
	for _, name := range r.names {
		t := r.tasks[name]
		if t.IsPrivate() {
			continue
		}
		rows = append(rows, Row{
			Name:    t.Name,
			Summary: t.Summary(),
			Ignored: t.Ignored,
			Default: name == r.defaultName,
		})
	}
	return rows
}
