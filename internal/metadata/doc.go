// Package metadata parses the structured header block that fragment authors
// put at the top of a script and renders the comment statements derived
// from it.
//
// # Header Format
//
// The header is the first block comment opened with "/*!":
//
//	/*!
//	 \fn add_order
//	 \brief Registers a new order
//	 \param[in] customer_id owning customer
//	 \param[out] order_id generated key
//
//	 Free text after the last tag becomes the description.
//	*/
//
// Recognized declaration tags map to an object type and, for types whose
// members can be documented, a parameter kind:
//
//	\fn  procedure  parameter
//	\tb  table      column
//	\tg  trigger    -
//	\sq  sequence   -
//
// \param tags on a trigger or sequence are ignored.
//
// # Generated Statements
//
// CommentStatements turns an Info into
//
//	comment on procedure add_order is 'Registers a new order';
//	comment on parameter add_order.customer_id is 'owning customer';
//
// # Identity
//
// FragmentID derives a deterministic UUID v5 from a fragment's relative path
// so that a fragment keeps the same identity across builds and machines.
package metadata
