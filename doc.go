// Package relaypager provides bidirectional keyset (cursor) and page-number
// pagination over an ordered query backend.
//
// Overview
//
// relaypager implements two pagination modes:
//   - Cursor: keyset pagination seeking by an anchor decoded from an opaque
//     cursor. Pages can be read forward (After) or backward (Before), and the
//     metadata tells whether pages exist on both sides of the window. Each
//     page costs at most two concurrent backend queries.
//   - Pages: LIMIT/OFFSET pagination by page number, with an optional
//     concurrent count query for the page count.
//
// Key concepts
//   - Backend: the data store. GORMBackend and MemoryBackend are provided.
//   - CursorCodec: converts rows to cursors and cursors to anchors. IDCodec
//     handles a single integer identifier, KeysetCodec composite keys.
//   - Paginator: validates options, fills defaults and shapes the result.
//   - Orderings: multi-column ordering with explicit directions.
//
// Usage
//
//	backend, err := relaypager.NewGORMBackend[User](db.Model(&User{}).Where("active"),
//		relaypager.OrderBy{Column: "id", Direction: relaypager.DirectionASC},
//	)
//	...
//	users, info, err := relaypager.New[User](backend).WithCursor(ctx, relaypager.CursorOptions[User]{
//		Limit: relaypager.LimitOf(20),
//		After: token,
//	})
package relaypager
