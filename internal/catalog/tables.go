// SPDX-License-Identifier: MPL-2.0

package catalog

// additionalModules maps modules whose gating key does not follow the
// default CIRCUITPY_<NAME> convention, or whose sub-features are gated by
// their own key. Checked before the default key derivation.
var additionalModules = map[string]string{
	"_asyncio":            "MICROPY_PY_ASYNCIO",
	"_eve":                "CIRCUITPY__EVE",
	"adafruit_bus_device": "CIRCUITPY_BUSDEVICE",
	"adafruit_pixelbuf":   "CIRCUITPY_PIXELBUF",
	"array":               "CIRCUITPY_ARRAY",
	// always available, so depend on something that's always 1.
	"builtins":                       "CIRCUITPY",
	"builtins.pow3":                  "CIRCUITPY_BUILTINS_POW3",
	"busio.SPI":                      "CIRCUITPY_BUSIO_SPI",
	"busio.UART":                     "CIRCUITPY_BUSIO_UART",
	"collections":                    "CIRCUITPY_COLLECTIONS",
	"fontio":                         "CIRCUITPY_DISPLAYIO",
	"io":                             "CIRCUITPY_IO",
	"keypad.KeyMatrix":               "CIRCUITPY_KEYPAD_KEYMATRIX",
	"keypad.Keys":                    "CIRCUITPY_KEYPAD_KEYS",
	"keypad.ShiftRegisterKeys":       "CIRCUITPY_KEYPAD_SHIFTREGISTERKEYS",
	"keypad_demux.DemuxKeyMatrix":    "CIRCUITPY_KEYPAD_DEMUX",
	"os.getenv":                      "CIRCUITPY_OS_GETENV",
	"select":                         "MICROPY_PY_SELECT_SELECT",
	"sys":                            "CIRCUITPY_SYS",
	"terminalio":                     "CIRCUITPY_DISPLAYIO",
	"usb":                            "CIRCUITPY_PYUSB",
	"socketpool.socketpool.AF_INET6": "CIRCUITPY_SOCKETPOOL_IPV6",
}

// modulesNotInBindings lists modules that never appear under a bindings
// directory but are still part of the catalog.
var modulesNotInBindings = []string{"binascii", "errno", "json", "re", "ulab"}
