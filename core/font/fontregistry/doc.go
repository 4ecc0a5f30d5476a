/*
Package fontregistry manages the font catalog providers available to an
application.

Providers are created by named factories. Three factories are pre-registered:

	fontconfig   fonts known to fontconfig (Linux, BSD)
	system       scan of the platform's font directories
	gofonts      the Go fonts, compiled into the binary; always available

Applications may register additional factories, e.g. for fonts embedded into
the application. The default provider is selected by configuration key
'font-catalog' or, if not set, by trying a platform specific chain of
factories, the first one succeeding.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontloc.catalog'
func tracer() tracing.Trace {
	return tracing.Select("fontloc.catalog")
}
