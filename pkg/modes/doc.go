// Package modes implements the confidentiality modes of operation ECB, CBC,
// CFB, OFB and CTR over an 8-byte block primitive.
//
// A Context binds a key, a mode and its initialization vector. Encrypt and
// Decrypt may be called repeatedly to process one message incrementally; the
// chaining state carried between calls makes chunked processing produce the
// same bytes as a single call over the whole message.
//
// ECB and CBC require input lengths that are a multiple of the block size and
// never pad. CFB, OFB and CTR accept any length; ciphertext has the same length
// as plaintext.
//
// IVs must be unique per key and message for CBC, CFB, OFB and CTR. The package
// does not track IV use. A Context serves exactly one message in one direction;
// call Reset with a fresh IV before starting another message.
package modes
