// SPDX-License-Identifier: MPL-2.0

package registry

// supportedPorts lists every platform family whose boards are enumerated.
var supportedPorts = []string{
	"analog",
	"atmel-samd",
	"broadcom",
	"cxd56",
	"espressif",
	"litex",
	"mimxrt10xx",
	"nordic",
	"raspberrypi",
	"renode",
	"silabs",
	"stm",
	"zephyr-cp",
}

// vendorNestedPort is the one port whose boards directory has an extra
// vendor level; board ids there are "<vendor>_<board>".
const vendorNestedPort = "zephyr-cp"

// aliasesByBoard maps a board directory name to its alias ids. Aliases are
// alternate identities kept for download continuity; they share the real
// board's directory and capability data.
var aliasesByBoard = map[string][]string{
	"circuitplayground_express": {
		"circuitplayground_express_4h",
		"circuitplayground_express_digikey_pycon2019",
	},
	"pybadge":  {"edgebadge"},
	"pyportal": {"pyportal_pynt"},
	"gemma_m0": {"gemma_m0_pycon2018"},
}

// aliasBrandNames overrides the generic display naming for aliases whose
// branded name cannot be derived from the alias id.
var aliasBrandNames = map[string]string{
	"circuitplayground_express_4h":                "Adafruit Circuit Playground Express 4-H",
	"circuitplayground_express_digikey_pycon2019": "Circuit Playground Express Digi-Key PyCon 2019",
	"edgebadge":                                   "Adafruit EdgeBadge",
	"pyportal_pynt":                               "Adafruit PyPortal Pynt",
	"gemma_m0_pycon2018":                          "Adafruit Gemma M0 PyCon 2018",
}
