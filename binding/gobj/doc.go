// Package gobj binds GLib-style objects living on a resource.Heap.
//
// Each type picks the ownership strategy matching its C counterpart's
// contract:
//
//	Array        plain refcount       g_array_new / g_array_ref / g_array_unref
//	Element      floating refcount    gst_element_factory_make returns floating
//	Bin          floating refcount    like Element, but take-ref increments
//	MainContext  plain refcount       g_main_context_default is borrowed
//	Source       alternate teardown   g_source_destroy, regardless of count
//	Quark        trivial              interned for the life of the process
//
// Every wrapper embeds an ownership.Handle, so Release, Detach, Valid and Get
// behave the same across types.
package gobj
