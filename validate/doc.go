// Package validate checks a data map tree for reserved name collisions,
// field naming convention and, optionally, consistency between stored type
// tags and values.
//
// Every check walks the whole tree and reports all findings; nothing stops
// at the first problem. Reserved name collisions are always fatal. Naming
// and type issues have a Level and only fail a Report when set to Fatal.
//
// Fields inside mappings held in lists are reported as "a.b[2].c".
package validate
