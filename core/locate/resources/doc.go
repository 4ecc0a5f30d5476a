/*
Package resources locates platform resources for an application.

Currently this is mostly about fonts: fonts installed on a system are found
either by asking fontconfig (https://www.freedesktop.org/wiki/Software/fontconfig/)
or by scanning the platform's font directories. Results of expensive queries
are kept in the user's cache directory.

Configuration keys used by this package:

	app-key      application key, name of the sub-folder of the user's cache directory
	fontconfig   absolute path of the 'fc-list' binary; searched in $PATH if not set
	font-dirs    additional font directories, separated by the OS path list separator

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package resources

import (
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontloc.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontloc.resources")
}

// DefaultAppKey is used as the application key if none is configured.
const DefaultAppKey = "fontloc"

// confString reads a configuration value; conf may be nil.
func confString(conf schuko.Configuration, key string) string {
	if conf == nil {
		return ""
	}
	return conf.GetString(key)
}
