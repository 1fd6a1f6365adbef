// Package parse reads data map documents.
//
// A document is a JSON object with exactly the keys "standard", "DataRoot"
// and "ExtraProperties". The "standard" header is
//
//	<product name>;;;<version>;;;<reference url>
//
// A wrong product name is a *ParseError; a different version is only
// reported as a *VersionWarning in Result.Warnings.
//
// # Related Packages
//
//   - github.com/410-dev/lks410-sdm/encode - write documents
//   - github.com/410-dev/lks410-sdm/ir - tree representation
package parse
