// Package hash provides one-way hashing behind the Hash interface.
//
// Passwords use bcrypt or argon2id (selected by NewPassword); reset codes use
// keyed HMAC-SHA256. Only digests are stored, verification re-derives.
package hash
