package main

import (
	"encoding/json"
	"fmt"
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	wrc "www.velocidex.com/golang/go-wrc"
)

var (
	manifest_command      = app.Command("manifest", "Displays the application manifest.")
	manifest_command_xml  = manifest_command.Flag("xml", "Print the XML instead of JSON.").Bool()
	manifest_command_file = manifest_command.Arg("file", "").Required().
				OpenFile(os.O_RDONLY, 0600)
)

func doManifest() {
	stream := openStream(*manifest_command_file)

	resource, pres := stream.ResourceByType(wrc.RESOURCE_TYPE_MANIFEST)
	if !pres {
		kingpin.Fatalf("No manifest in %v", (*manifest_command_file).Name())
	}

	for _, language_identifier := range resource.LanguageIdentifiers() {
		manifest, err := resource.Manifest(language_identifier)
		kingpin.FatalIfError(err, "Can not read manifest")

		if *manifest_command_xml {
			fmt.Println(manifest.String())
			continue
		}

		serialized, err := manifest.JSON()
		kingpin.FatalIfError(err, "Can not convert manifest")

		var value interface{}
		err = json.Unmarshal(serialized, &value)
		kingpin.FatalIfError(err, "Can not convert manifest")
		dump(value)
	}
}
