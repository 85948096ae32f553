package main

import (
	"time"

	"github.com/Harishsaini91/BlenderHub-sub001/cmd"
	"github.com/Harishsaini91/BlenderHub-sub001/util"
)

func main() {
	data := map[string]interface{}{
		"startTime":   time.Now().UTC().Format("January 02, 2006 - 03:04:05 PM MST"),
		"message":     "Starting blenderhub request backend server . . .",
		"codeVersion": cmd.Version,
		"repo":        "blenderhub-server",
	}
	util.PrettyPrint(data)
	cmd.New().Execute()
}
