package main

import (
	"os"

	wrc "www.velocidex.com/golang/go-wrc"
)

var (
	dump_command      = app.Command("dump", "Dumps the decoded resource tree for debugging.")
	dump_command_file = dump_command.Arg("file", "").Required().
				OpenFile(os.O_RDONLY, 0600)
)

func doDump() {
	stream := openStream(*dump_command_file)

	for _, resource := range stream.Resources() {
		for _, language_identifier := range resource.LanguageIdentifiers() {
			entry, _, err := resource.LanguageEntry(language_identifier)
			if err != nil {
				wrc.Debug(err.Error())
				continue
			}
			wrc.Debug(entry)
		}
	}
}
