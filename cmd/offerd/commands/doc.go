/*
Package commands holds the integration tests of the offerd binary. They
run the daemon against a prepared home directory, and against a
tendermint node when the binary is installed.
*/
package commands
