// Package partition splits a monolithic script into one file per database
// object.
//
// The script is read line by line. A creation header such as
//
//	create or alter procedure add_order
//
// starts a new object unless it only repeats the object already being
// collected. Procedures and triggers are usually wrapped in a terminator
// span:
//
//	set term ^ ;
//	create procedure add_order ... ^
//	set term ; ^
//
// Inside a span, headers never split the text; the first one merely names
// the span. Lines after the closing marker (comment statements, grants)
// stay with the span's object until the next header.
//
// Objects are written as <prefix>_<name>.sql, for example prc_add_order.sql
// or tbl_customers.sql. Existing files are never overwritten.
package partition
