// Package iflicks imports finished episodes into the iFlicks media library
// app via osascript. Import is optional and driven by a three-way Mode.
package iflicks
