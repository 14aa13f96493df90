// Command lyrix manages a library of synchronized lyrics: importing and
// exporting LRC files, editing timecodes, and transferring whole libraries
// as bundles.
package main
