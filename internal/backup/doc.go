// Package backup implements the repository backup workflow: list the
// authenticated user's repositories, confirm with the operator, then clone or
// update each local mirror and verify its integrity with git fsck.
//
// Per-repository failures never abort a run. Only a listing failure is fatal,
// so a single broken repository cannot prevent the rest from being backed up.
package backup
