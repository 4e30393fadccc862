// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Libnixdoc is a C shared library for parsing Nixdoc comments.
//
// Build it with:
//
//	$ go build -buildmode=c-shared -o libnixdoc.so ./cmd/libnixdoc
//
// Parsed documents are identified by opaque handles that must be released
// with nixdoc_free. Every string returned by the library must be released
// with nixdoc_free_string and every string array with
// nixdoc_free_string_array. Getters return NULL when the document has no
// such field, and an empty string when the handle is unknown.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>

enum {
	NIXDOC_SUCCESS = 0,
	NIXDOC_ERROR_PARSE = 1,
	NIXDOC_ERROR_NULL = 2,
	NIXDOC_ERROR_PANIC = 3,
};

typedef uintptr_t nixdoc_handle;

typedef struct {
	char **data;
	size_t len;
} nixdoc_string_array;
*/
import "C"

import (
	"strings"
	"unsafe"

	"go.astrophena.name/nixdoc/internal/nixdoc"
	"go.astrophena.name/nixdoc/internal/nixdoc/handle"
)

var docs = handle.NewTable()

func main() {}

//export nixdoc_parse
func nixdoc_parse(input *C.char) C.int {
	if input == nil {
		return C.int(handle.StatusNull)
	}
	return C.int(docs.Check(C.GoString(input)))
}

//export nixdoc_parse_into
func nixdoc_parse_into(input *C.char, out *C.nixdoc_handle) C.int {
	if input == nil || out == nil {
		return C.int(handle.StatusNull)
	}
	h, st := docs.Parse(C.GoString(input))
	if st == handle.StatusSuccess {
		*out = C.nixdoc_handle(h)
	}
	return C.int(st)
}

//export nixdoc_free
func nixdoc_free(h C.nixdoc_handle) {
	docs.Free(handle.Handle(h))
}

//export nixdoc_is_doc_comment
func nixdoc_is_doc_comment(input *C.char) C.bool {
	if input == nil {
		return false
	}
	return C.bool(nixdoc.IsDocComment(C.GoString(input)))
}

//export nixdoc_title
func nixdoc_title(h C.nixdoc_handle) *C.char {
	return cString(docs.Title(handle.Handle(h)))
}

//export nixdoc_description
func nixdoc_description(h C.nixdoc_handle) *C.char {
	return cString(docs.Description(handle.Handle(h)), true)
}

//export nixdoc_type_sig
func nixdoc_type_sig(h C.nixdoc_handle) *C.char {
	return cString(docs.TypeSig(handle.Handle(h)))
}

//export nixdoc_is_deprecated
func nixdoc_is_deprecated(h C.nixdoc_handle) C.bool {
	return C.bool(docs.IsDeprecated(handle.Handle(h)))
}

//export nixdoc_deprecation_notice
func nixdoc_deprecation_notice(h C.nixdoc_handle) *C.char {
	return cString(docs.DeprecationNotice(handle.Handle(h)))
}

//export nixdoc_arguments
func nixdoc_arguments(h C.nixdoc_handle) *C.nixdoc_string_array {
	return cStringArray(docs.Arguments(handle.Handle(h)))
}

//export nixdoc_examples
func nixdoc_examples(h C.nixdoc_handle) *C.nixdoc_string_array {
	return cStringArray(docs.Examples(handle.Handle(h)))
}

//export nixdoc_notes
func nixdoc_notes(h C.nixdoc_handle) *C.nixdoc_string_array {
	return cStringArray(docs.Notes(handle.Handle(h)))
}

//export nixdoc_warnings
func nixdoc_warnings(h C.nixdoc_handle) *C.nixdoc_string_array {
	return cStringArray(docs.Warnings(handle.Handle(h)))
}

//export nixdoc_free_string
func nixdoc_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

//export nixdoc_free_string_array
func nixdoc_free_string_array(arr *C.nixdoc_string_array) {
	if arr == nil {
		return
	}
	if arr.data != nil {
		for _, s := range unsafe.Slice(arr.data, arr.len) {
			C.free(unsafe.Pointer(s))
		}
		C.free(unsafe.Pointer(arr.data))
	}
	C.free(unsafe.Pointer(arr))
}

// cString copies s to C memory. It returns NULL if ok is false. Strings with
// NUL bytes cannot be represented and become empty.
func cString(s string, ok bool) *C.char {
	if !ok {
		return nil
	}
	if strings.ContainsRune(s, 0) {
		s = ""
	}
	return C.CString(s)
}

func cStringArray(items []string, ok bool) *C.nixdoc_string_array {
	if !ok {
		return nil
	}
	arr := (*C.nixdoc_string_array)(C.malloc(C.size_t(unsafe.Sizeof(C.nixdoc_string_array{}))))
	arr.data = nil
	arr.len = C.size_t(len(items))
	if len(items) == 0 {
		return arr
	}
	data := (**C.char)(C.malloc(C.size_t(len(items)) * C.size_t(unsafe.Sizeof((*C.char)(nil)))))
	elems := unsafe.Slice(data, len(items))
	for i, s := range items {
		elems[i] = cString(s, true)
	}
	arr.data = data
	return arr
}
