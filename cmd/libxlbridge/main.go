// Command libxlbridge builds the engine as a C shared library:
//
//	go build -buildmode=c-shared -o libxlbridge.so ./cmd/libxlbridge
//
// Every xl_* symbol is one boundary call. Objects are passed as xl_handle
// tokens; strings go in and out as UTF-8. Strings returned by the library are
// never NULL and must be released with xl_free_string. A failing call returns
// the zero value of its result after delivering the fault to the callback
// registered with xl_init_library.
package main

func main() {}
