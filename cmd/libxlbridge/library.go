package main

// #include "xlbridge.h"
import "C"

import (
	"unsafe"

	"github.com/wippyai/xlsx-bridge/engine"
	"github.com/wippyai/xlsx-bridge/resource"
)

var x = engine.Exports()

// exceptionCallback adapts a C function pointer to the engine callback. The
// strings handed to C are freed once the callback returns.
func exceptionCallback(cb C.xl_exception_cb) engine.Callback {
	if cb == nil {
		return nil
	}
	return func(class, payload string) {
		cClass := C.CString(class)
		defer C.free(unsafe.Pointer(cClass))
		cPayload := C.CString(payload)
		defer C.free(unsafe.Pointer(cPayload))
		C.xl_fire_exception(cb, cClass, cPayload)
	}
}

// xl_init_library returns false when cb was not installed because another
// callback already holds the slot or cb is NULL.
//
//export xl_init_library
func xl_init_library(cb C.xl_exception_cb) C.bool {
	return C.bool(x.InitLibrary(exceptionCallback(cb)))
}

//export xl_free_string
func xl_free_string(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

//export xl_library_memory_release
func xl_library_memory_release() {
	x.LibraryMemoryRelease()
}

//export xl_free_handle
func xl_free_handle(h C.xl_handle) {
	x.FreeHandle(resource.Handle(h))
}

//export xl_live_handles
func xl_live_handles() C.int32_t {
	return C.int32_t(x.LiveHandles())
}

//export xl_raise_for_test
func xl_raise_for_test(class *C.char, message *C.char) {
	x.RaiseForTest(C.GoString(class), C.GoString(message))
}
