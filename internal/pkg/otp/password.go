package otp

const (
	passwordLetters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	passwordDigits  = "23456789"
	passwordSymbols = "!@#$%^&*"
)

// GenerateTempPassword returns a temporary password of the given length
// containing at least one letter, one digit and one symbol. Lengths below 8
// are raised to 12. Ambiguous characters (0/O, 1/l/I) are excluded because
// the password is delivered over email.
func GenerateTempPassword(length int) (string, error) {
	if length < 8 {
		length = 12
	}

	alphabet := passwordLetters + passwordDigits + passwordSymbols

	buf := make([]byte, length)

	// guarantee one of each class up front
	classes := []string{passwordLetters, passwordDigits, passwordSymbols}
	for i, class := range classes {
		n, err := randIntStrict(int64(len(class)))
		if err != nil {
			return "", err
		}
		buf[i] = class[n]
	}

	for i := len(classes); i < length; i++ {
		n, err := randIntStrict(int64(len(alphabet)))
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n]
	}

	// shuffle so the class positions are not predictable
	for i := length - 1; i > 0; i-- {
		j, err := randIntStrict(int64(i + 1))
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}
