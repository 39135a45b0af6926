package main

import (
	"os"
	"strconv"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	cat_command          = app.Command("cat", "Writes the raw payload of a resource to stdout.")
	cat_command_file     = cat_command.Arg("file", "").Required().OpenFile(os.O_RDONLY, 0600)
	cat_command_type     = cat_command.Arg("type", "Type name (e.g. RT_VERSION) or identifier.").Required().String()
	cat_command_name     = cat_command.Arg("name", "Resource name or identifier.").Required().String()
	cat_command_language = cat_command.Flag("language", "Language identifier.").Default("-1").Int64()
)

// Patterns match a name or a numeric identifier.
func matchName(name string, identifier uint32, pattern string) bool {
	if name == pattern {
		return true
	}

	number, err := strconv.ParseUint(pattern, 0, 32)
	return err == nil && uint32(number) == identifier
}

func doCat() {
	stream := openStream(*cat_command_file)

	for _, resource := range stream.Resources() {
		if !matchName(resource.Name(), resource.Identifier(), *cat_command_type) {
			continue
		}

		for _, item := range resource.Items() {
			if !matchName(item.NameString(), item.Identifier(), *cat_command_name) {
				continue
			}

			for _, language := range item.SubItems() {
				if *cat_command_language >= 0 &&
					int64(language.Identifier()) != *cat_command_language {
					continue
				}

				data, err := language.ReadData()
				kingpin.FatalIfError(err, "Can not read resource")

				_, err = os.Stdout.Write(data)
				kingpin.FatalIfError(err, "Can not write resource")
				return
			}
		}
	}

	kingpin.Fatalf("Resource %v/%v not found", *cat_command_type, *cat_command_name)
}
