// Package auth manages the admin access keys of shops.
//
// A key is a random token handed out once by the keys create command. Only
// its Argon2id hash is stored. Admin requests present the shop domain and the
// key, Authenticate accepts the request when any key of that shop matches.
package auth
