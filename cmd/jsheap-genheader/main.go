// Command jsheap-genheader renders the jsheap.h C header that
// cmd/libjsheap's //export functions implement. It is a plain code
// generator, not a cgo consumer — it never imports cmd/libjsheap, it just
// renders the contract both sides agree on, so keeping it outside the
// cgo-tagged package avoids forcing a C toolchain onto every `go generate`.
//
// © 2025 jsheap authors. MIT License.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/template"
	"time"
)

const headerTemplate = `/* Generated by jsheap-genheader on {{.GeneratedAt}}. Do not edit by hand. */
#ifndef JSHEAP_H
#define JSHEAP_H

#include <stddef.h>
#include <stdint.h>

#ifdef __cplusplus
extern "C" {
#endif

typedef struct {
	size_t   young_gen_threshold_kb;
	size_t   old_gen_threshold_kb;
	uint64_t max_pause_ms;
	int      incremental;
	int      verbose;
} jsheap_config_t;

typedef struct {
	uint64_t allocation_count;
	uint64_t collection_count;
	uint64_t objects_freed;
	uint64_t young_generation_size;
	uint64_t old_generation_size;
} jsheap_stats_t;

typedef void (*jsheap_finalizer_fn)(uintptr_t object);

{{range .Functions}}{{.Signature}};
{{end}}
#ifdef __cplusplus
}
#endif

#endif /* JSHEAP_H */
`

type function struct {
	Signature string
}

type headerData struct {
	GeneratedAt string
	Functions   []function
}

// exportedFunctions mirrors, one line per //export directive, the function
// list in cmd/libjsheap/main.go. Keeping the list here instead of parsing
// the cgo file means this tool has no dependency on the C toolchain being
// available at generate time.
var exportedFunctions = []string{
	"uintptr_t jsheap_init(void)",
	"void jsheap_shutdown(uintptr_t gc)",
	"void jsheap_configure(uintptr_t gc, jsheap_config_t *cfg)",
	"void jsheap_collect(uintptr_t gc)",
	"void jsheap_add_root(uintptr_t gc, uintptr_t obj)",
	"void jsheap_remove_root(uintptr_t gc, uintptr_t obj)",
	"jsheap_stats_t jsheap_stats(uintptr_t gc)",
	"uintptr_t jsheap_create_object(uintptr_t gc, int object_type)",
	"void jsheap_release_object(uintptr_t obj)",
	"int jsheap_get_object_type(uintptr_t obj)",
	"int jsheap_set_property_string(uintptr_t obj, const char *key, const char *value)",
	"int jsheap_set_property_number(uintptr_t obj, const char *key, double value)",
	"int jsheap_set_property_boolean(uintptr_t obj, const char *key, int value)",
	"int jsheap_set_property_object(uintptr_t obj, const char *key, uintptr_t child)",
	"int jsheap_get_property_string(uintptr_t obj, const char *key, char *out_buf, size_t buf_size)",
	"int jsheap_get_property_number(uintptr_t obj, const char *key, double *out)",
	"int jsheap_get_property_boolean(uintptr_t obj, const char *key, int *out)",
	"int jsheap_get_property_object(uintptr_t obj, const char *key, uintptr_t *out_handle)",
	"int jsheap_set_finalizer(uintptr_t obj, jsheap_finalizer_fn fn)",
	"size_t jsheap_interned_string_count(void)",
	"size_t jsheap_interned_string_memory(void)",
}

func main() {
	out := flag.String("out", "jsheap.h", "path to write the generated header to")
	flag.Parse()

	data := headerData{GeneratedAt: time.Now().UTC().Format(time.RFC3339)}
	for _, sig := range exportedFunctions {
		data.Functions = append(data.Functions, function{Signature: sig})
	}

	tmpl, err := template.New("jsheap.h").Parse(headerTemplate)
	if err != nil {
		fatal(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		fatal(err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", *out)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "jsheap-genheader:", err)
	os.Exit(1)
}
