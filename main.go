// SPDX-License-Identifier: MPL-2.0

package main

import cmd "curseupload-cli/cmd/curseupload"

func main() {
	cmd.Execute()
}
