package memory

const MaxSettled = maxSettled
