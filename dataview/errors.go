package dataview

import "errors"

var errMissingFile = errors.New("file パラメータでUKEファイルを指定してください")
