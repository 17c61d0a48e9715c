// SPDX-License-Identifier: MPL-2.0

package main

import cmd "dockman/cmd/dockman"

func main() {
	cmd.Execute()
}
