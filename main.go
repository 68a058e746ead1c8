// SPDX-License-Identifier: MPL-2.0

// fwmatrix reports per-board capability data for a firmware source tree.
package main

import cmd "fwmatrix-cli/cmd/fwmatrix"

func main() {
	cmd.Execute()
}
