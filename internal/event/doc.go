// Package event provides a pub-sub event bus for decoupled communication
// between grid cells and the grid-wide services they observe.
//
// Focus, range selection, flash and cell notification broadcasts are
// process-wide state. Rather than reaching for globals, each service and
// each cell controller is handed a [Bus], and controllers collect their
// subscriptions in a [Group] that is released as a unit on destruction.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Base]: Embeddable implementation of Event
//   - [Bus]: Synchronous pub-sub dispatcher, safe for concurrent use
//   - [Group]: Scoped subscription set with symmetric teardown
//
// # Panics
//
// By default the bus recovers handler panics and logs them so that one
// misbehaving handler cannot block delivery to others. Grid buses are built
// with [WithPanicPropagation] instead: handlers there run user-supplied
// renderers and rules, whose failures must surface.
//
// # Basic Usage
//
//	bus := event.NewBus(event.WithPanicPropagation())
//
//	group := event.NewGroup()
//	group.Subscribe(bus, "cell.focused", func(e event.Event) {
//	    focused := e.(grid.CellFocusedEvent)
//	    ...
//	})
//	group.Add(element.AddEventListener("keydown", onKeyDown))
//
//	// On destruction
//	group.Release()
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - cell.focused, cell.clicked, cell.double_clicked, cell.context_menu, cell.value_changed
//   - range.changed
//   - cells.flash
//   - column.left_changed, column.width_changed, column.pinned_edge_changed
//   - row.cell_changed, row.selected_changed
package event
