// Package encryption encrypts and decrypts files through the block cipher
// mode engine.
//
// Every output file starts with a small envelope recording the primitive,
// mode, CFB segment size, padding scheme and IV, so decryption needs only the
// key. Files are processed concurrently, streamed in fixed-size chunks and
// written atomically. The envelope carries no authentication tag.
package encryption
