package broken

func Oops() int { return "not an int" }
