package main

import (
	"os"

	"github.com/Velocidex/ordereddict"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	wrc "www.velocidex.com/golang/go-wrc"
)

var (
	version_command      = app.Command("version", "Displays the version information.")
	version_command_file = version_command.Arg("file", "").Required().
				OpenFile(os.O_RDONLY, 0600)
)

func doVersion() {
	stream := openStream(*version_command_file)

	resource, pres := stream.ResourceByType(wrc.RESOURCE_TYPE_VERSION)
	if !pres {
		kingpin.Fatalf("No version information in %v",
			(*version_command_file).Name())
	}

	result := ordereddict.NewDict()
	for _, language_identifier := range resource.LanguageIdentifiers() {
		values, err := resource.VersionInformation(language_identifier)
		if err != nil {
			result.Set(wrc.FormatLanguageIdentifier(language_identifier), err.Error())
			continue
		}
		result.Set(wrc.FormatLanguageIdentifier(language_identifier),
			wrc.VersionToDict(values))
	}

	dump(result)
}
