// Package effective turns a raw provisioning model into its effective form.
//
// Resolution pipeline:
//  1. Merge features with the same name, in order. Later declarations win:
//     variables and settings are overlaid, artifacts with the same coordinates
//     are replaced, configurations are replaced ("overwrite") or key-merged
//     ("merge").
//  2. Apply ":remove" run modes. A run mode named ":remove" plus optional
//     other names removes its artifacts and configurations from the run mode
//     with the remaining names, then disappears.
//  3. Substitute ${name} references with feature variables in artifact
//     coordinates, settings values and string configuration values.
//     "\${" yields a literal "${". Felix string values are unescaped before,
//     so there the document must read "\\${".
//  4. Drop run modes that are not active for a non-nil filter.
//
// The input model is never modified.
package effective
