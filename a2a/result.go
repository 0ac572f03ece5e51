package a2a

// SendMessageResult is the return type of a completed aggregation:
// either a terminal Message or a Task snapshot. Implemented only by
// *Message and *Task.
type SendMessageResult interface {
	isSendMessageResult()
}

func (*Message) isSendMessageResult() {}
func (*Task) isSendMessageResult()    {}
