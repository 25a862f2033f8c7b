package tui

var OutputQuery = outputQuery

func (m AppModel) WindowChannel() <-chan int {
	return m.windowCh
}
