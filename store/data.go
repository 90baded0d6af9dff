package store

const dataListPropertyKey = "REGISTRY:DATA:LIST"

// the stored-data list is positional with duplicates allowed, so it
// persists as one blob instead of one key per entry

func (bs *BadgerStore) WriteDataList(values []string) error {
	return bs.WriteProperty([]byte(dataListPropertyKey), MsgpackMarshalPanic(values))
}

func (bs *BadgerStore) ReadDataList() ([]string, error) {
	bs2, err := bs.ReadProperty([]byte(dataListPropertyKey))
	if err != nil {
		return nil, err
	}
	if len(bs2) == 0 {
		return nil, nil
	}
	var values []string
	err = MsgpackUnmarshal(bs2, &values)
	return values, err
}
