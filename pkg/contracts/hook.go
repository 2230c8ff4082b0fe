package contracts

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

// IntentHookABI is the ABI of the IntentHook contract
const IntentHookABI = `[
	{
		"anonymous": false,
		"inputs": [
			{
				"indexed": true,
				"internalType": "bytes32",
				"name": "intentId",
				"type": "bytes32"
			},
			{
				"indexed": true,
				"internalType": "address",
				"name": "user",
				"type": "address"
			},
			{
				"indexed": false,
				"internalType": "bytes32",
				"name": "suiDestination",
				"type": "bytes32"
			},
			{
				"indexed": false,
				"internalType": "address",
				"name": "inputToken",
				"type": "address"
			},
			{
				"indexed": false,
				"internalType": "uint256",
				"name": "inputAmount",
				"type": "uint256"
			},
			{
				"indexed": false,
				"internalType": "uint256",
				"name": "usdcAmount",
				"type": "uint256"
			},
			{
				"indexed": false,
				"internalType": "uint8",
				"name": "strategyId",
				"type": "uint8"
			},
			{
				"indexed": false,
				"internalType": "uint256",
				"name": "timestamp",
				"type": "uint256"
			}
		],
		"name": "IntentCreated",
		"type": "event"
	},
	{
		"inputs": [
			{
				"internalType": "bytes32",
				"name": "intentId",
				"type": "bytes32"
			}
		],
		"name": "getIntent",
		"outputs": [
			{
				"internalType": "address",
				"name": "user",
				"type": "address"
			},
			{
				"internalType": "bytes32",
				"name": "suiDestination",
				"type": "bytes32"
			},
			{
				"internalType": "address",
				"name": "inputToken",
				"type": "address"
			},
			{
				"internalType": "uint256",
				"name": "inputAmount",
				"type": "uint256"
			},
			{
				"internalType": "uint256",
				"name": "usdcAmount",
				"type": "uint256"
			},
			{
				"internalType": "uint8",
				"name": "strategyId",
				"type": "uint8"
			},
			{
				"internalType": "uint8",
				"name": "status",
				"type": "uint8"
			},
			{
				"internalType": "uint256",
				"name": "createdAt",
				"type": "uint256"
			}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "nextIntentId",
		"outputs": [
			{
				"internalType": "uint256",
				"name": "",
				"type": "uint256"
			}
		],
		"stateMutability": "view",
		"type": "function"
	}
]`

// IntentHook is an auto generated Go binding around an Ethereum contract.
type IntentHook struct {
	IntentHookCaller   // Read-only binding to the contract
	IntentHookFilterer // Log filterer for contract events
}

// IntentHookCaller is an auto generated read-only Go binding around an Ethereum contract.
type IntentHookCaller struct {
	contract *bind.BoundContract // Generic contract wrapper for the low level calls
}

// IntentHookFilterer is an auto generated log filtering Go binding around an Ethereum contract events.
type IntentHookFilterer struct {
	contract *bind.BoundContract // Generic contract wrapper for the low level calls
}

// NewIntentHook creates a new instance of IntentHook, bound to a specific deployed contract.
func NewIntentHook(address common.Address, backend bind.ContractBackend) (*IntentHook, error) {
	contract, err := bindIntentHook(address, backend, backend, backend)
	if err != nil {
		return nil, err
	}
	return &IntentHook{IntentHookCaller: IntentHookCaller{contract: contract}, IntentHookFilterer: IntentHookFilterer{contract: contract}}, nil
}

// NewIntentHookCaller creates a new read-only instance of IntentHook, bound to a specific deployed contract.
func NewIntentHookCaller(address common.Address, caller bind.ContractCaller) (*IntentHookCaller, error) {
	contract, err := bindIntentHook(address, caller, nil, nil)
	if err != nil {
		return nil, err
	}
	return &IntentHookCaller{contract: contract}, nil
}

// NewIntentHookFilterer creates a new log filterer instance of IntentHook, bound to a specific deployed contract.
func NewIntentHookFilterer(address common.Address, filterer bind.ContractFilterer) (*IntentHookFilterer, error) {
	contract, err := bindIntentHook(address, nil, nil, filterer)
	if err != nil {
		return nil, err
	}
	return &IntentHookFilterer{contract: contract}, nil
}

// bindIntentHook binds a generic wrapper to an already deployed contract.
func bindIntentHook(address common.Address, caller bind.ContractCaller, transactor bind.ContractTransactor, filterer bind.ContractFilterer) (*bind.BoundContract, error) {
	parsed, err := abi.JSON(strings.NewReader(IntentHookABI))
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(address, parsed, caller, transactor, filterer), nil
}

// IntentHookIntent is the result of the getIntent view call.
type IntentHookIntent struct {
	User           common.Address
	SuiDestination [32]byte
	InputToken     common.Address
	InputAmount    *big.Int
	UsdcAmount     *big.Int
	StrategyId     uint8
	Status         uint8
	CreatedAt      *big.Int
}

// GetIntent is a free data retrieval call binding the contract method 0x2eca5779.
//
// Solidity: function getIntent(bytes32 intentId) view returns(address user, bytes32 suiDestination, address inputToken, uint256 inputAmount, uint256 usdcAmount, uint8 strategyId, uint8 status, uint256 createdAt)
func (_IntentHook *IntentHookCaller) GetIntent(opts *bind.CallOpts, intentId [32]byte) (IntentHookIntent, error) {
	var out []interface{}
	err := _IntentHook.contract.Call(opts, &out, "getIntent", intentId)

	outstruct := new(IntentHookIntent)
	if err != nil {
		return *outstruct, err
	}

	outstruct.User = *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	outstruct.SuiDestination = *abi.ConvertType(out[1], new([32]byte)).(*[32]byte)
	outstruct.InputToken = *abi.ConvertType(out[2], new(common.Address)).(*common.Address)
	outstruct.InputAmount = *abi.ConvertType(out[3], new(*big.Int)).(**big.Int)
	outstruct.UsdcAmount = *abi.ConvertType(out[4], new(*big.Int)).(**big.Int)
	outstruct.StrategyId = *abi.ConvertType(out[5], new(uint8)).(*uint8)
	outstruct.Status = *abi.ConvertType(out[6], new(uint8)).(*uint8)
	outstruct.CreatedAt = *abi.ConvertType(out[7], new(*big.Int)).(**big.Int)

	return *outstruct, err
}

// NextIntentId is a free data retrieval call binding the contract method 0x5f959b6b.
//
// Solidity: function nextIntentId() view returns(uint256)
func (_IntentHook *IntentHookCaller) NextIntentId(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := _IntentHook.contract.Call(opts, &out, "nextIntentId")

	if err != nil {
		return *new(*big.Int), err
	}

	out0 := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)

	return out0, err
}

// IntentHookIntentCreatedIterator is returned from FilterIntentCreated and is used to iterate over the raw logs and unpacked data for IntentCreated events raised by the IntentHook contract.
type IntentHookIntentCreatedIterator struct {
	Event *IntentHookIntentCreated // Event containing the contract specifics and raw log

	contract *bind.BoundContract // Generic contract to use for unpacking event data
	event    string              // Event name to use for unpacking event data

	logs chan types.Log        // Log channel receiving the found contract events
	sub  ethereum.Subscription // Subscription for errors, completion and termination
	done bool                  // Whether the subscription completed delivering logs
	fail error                 // Occurred error to stop iteration
}

// Next advances the iterator to the subsequent event, returning whether there
// are any more events found. In case of a retrieval or parsing error, false is
// returned and Error() can be queried for the exact failure.
func (it *IntentHookIntentCreatedIterator) Next() bool {
	// If the iterator failed, stop iterating
	if it.fail != nil {
		return false
	}
	// If the iterator completed, deliver directly whatever's available
	if it.done {
		select {
		case log := <-it.logs:
			it.Event = new(IntentHookIntentCreated)
			if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
				it.fail = err
				return false
			}
			it.Event.Raw = log
			return true

		default:
			return false
		}
	}
	// Iterator still in progress, wait for either a data or an error event
	select {
	case log := <-it.logs:
		it.Event = new(IntentHookIntentCreated)
		if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
			it.fail = err
			return false
		}
		it.Event.Raw = log
		return true

	case err := <-it.sub.Err():
		it.done = true
		it.fail = err
		return it.Next()
	}
}

// Error returns any retrieval or parsing error occurred during filtering.
func (it *IntentHookIntentCreatedIterator) Error() error {
	return it.fail
}

// Close terminates the iteration process, releasing any pending underlying
// resources.
func (it *IntentHookIntentCreatedIterator) Close() error {
	it.sub.Unsubscribe()
	return nil
}

// IntentHookIntentCreated represents a IntentCreated event raised by the IntentHook contract.
type IntentHookIntentCreated struct {
	IntentId       [32]byte
	User           common.Address
	SuiDestination [32]byte
	InputToken     common.Address
	InputAmount    *big.Int
	UsdcAmount     *big.Int
	StrategyId     uint8
	Timestamp      *big.Int
	Raw            types.Log // Blockchain specific contextual infos
}

// FilterIntentCreated is a free log retrieval operation binding the contract event 0x8a2c5c7b.
//
// Solidity: event IntentCreated(bytes32 indexed intentId, address indexed user, bytes32 suiDestination, address inputToken, uint256 inputAmount, uint256 usdcAmount, uint8 strategyId, uint256 timestamp)
func (_IntentHook *IntentHookFilterer) FilterIntentCreated(opts *bind.FilterOpts, intentId [][32]byte, user []common.Address) (*IntentHookIntentCreatedIterator, error) {
	var intentIdRule []interface{}
	for _, intentIdItem := range intentId {
		intentIdRule = append(intentIdRule, intentIdItem)
	}
	var userRule []interface{}
	for _, userItem := range user {
		userRule = append(userRule, userItem)
	}

	logs, sub, err := _IntentHook.contract.FilterLogs(opts, "IntentCreated", intentIdRule, userRule)
	if err != nil {
		return nil, err
	}
	return &IntentHookIntentCreatedIterator{contract: _IntentHook.contract, event: "IntentCreated", logs: logs, sub: sub}, nil
}

// WatchIntentCreated is a free log subscription operation binding the contract event 0x8a2c5c7b.
//
// Solidity: event IntentCreated(bytes32 indexed intentId, address indexed user, bytes32 suiDestination, address inputToken, uint256 inputAmount, uint256 usdcAmount, uint8 strategyId, uint256 timestamp)
func (_IntentHook *IntentHookFilterer) WatchIntentCreated(opts *bind.WatchOpts, sink chan<- *IntentHookIntentCreated, intentId [][32]byte, user []common.Address) (event.Subscription, error) {
	var intentIdRule []interface{}
	for _, intentIdItem := range intentId {
		intentIdRule = append(intentIdRule, intentIdItem)
	}
	var userRule []interface{}
	for _, userItem := range user {
		userRule = append(userRule, userItem)
	}

	logs, sub, err := _IntentHook.contract.WatchLogs(opts, "IntentCreated", intentIdRule, userRule)
	if err != nil {
		return nil, err
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case log := <-logs:
				// New log arrived, parse the event and forward to the user
				event := new(IntentHookIntentCreated)
				if err := _IntentHook.contract.UnpackLog(event, "IntentCreated", log); err != nil {
					return err
				}
				event.Raw = log

				select {
				case sink <- event:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

// ParseIntentCreated is a log parse operation binding the contract event 0x8a2c5c7b.
//
// Solidity: event IntentCreated(bytes32 indexed intentId, address indexed user, bytes32 suiDestination, address inputToken, uint256 inputAmount, uint256 usdcAmount, uint8 strategyId, uint256 timestamp)
func (_IntentHook *IntentHookFilterer) ParseIntentCreated(log types.Log) (*IntentHookIntentCreated, error) {
	event := new(IntentHookIntentCreated)
	if err := _IntentHook.contract.UnpackLog(event, "IntentCreated", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}
